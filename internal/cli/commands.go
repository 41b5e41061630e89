// pattern: Imperative Shell
package cli

import (
	"gt/internal/config"
	"gt/internal/source"
)

// BuildApp creates and configures the CLI application with one group per
// supported language.
func BuildApp(version string, env *Env) *App {
	app := NewApp(version, env.Stdout, env.Stderr)

	all := app.AddGroup(GroupAll, "Commands applicable to every language")
	registerAddProject(all, basicProjectType, false, env)
	registerLsCmd(all, env)
	registerProjects(all, env)
	registerReports(all, env)
	registerRoot(all, env)
	registerTree(all, Tree, "", false, env)

	javaType := env.Config.ProjectType
	if javaType == "" {
		javaType = config.DefaultProjectType
	}
	java := app.AddGroup(GroupJava, "Java sources and subprojects")
	registerSourceCommands(java, source.Java, env)
	registerAddProject(java, javaType, true, env)
	registerLsCmd(java, env)
	registerTree(java, LsPkg, string(source.Java), true, env)
	registerTree(java, Tree, string(source.Java), false, env)

	kotlin := app.AddGroup(GroupKotlin, "Kotlin sources and subprojects")
	registerSourceCommands(kotlin, source.Kotlin, env)
	registerAddProject(kotlin, kotlinProjectType, false, env)
	registerLsCmd(kotlin, env)
	registerTree(kotlin, LsPkg, string(source.Kotlin), true, env)
	registerTree(kotlin, Tree, string(source.Kotlin), false, env)

	return app
}
