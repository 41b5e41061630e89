// pattern: Imperative Shell

package generator

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"gt/internal/logging"
)

// Spring Initializr project types that produce a Gradle build.
var springTypes = map[string]bool{
	"gradle-project":        true,
	"gradle-project-kotlin": true,
}

// SpringInitializr generates Spring Boot subprojects from a start.spring.io
// compatible starter.tgz endpoint.
type SpringInitializr struct {
	URL         string
	DefaultType string
	// Params are extra query parameters from the command line or config.
	Params map[string]string
	Client *http.Client
	// Notify receives notices about parameters that were overridden.
	Notify func(string)
	Logger *logging.ScopedLogger
}

// NewSpringInitializr creates a generator for the given starter URL.
func NewSpringInitializr(starterURL, defaultType string, params map[string]string, logger *logging.ScopedLogger) *SpringInitializr {
	return &SpringInitializr{
		URL:         starterURL,
		DefaultType: defaultType,
		Params:      params,
		Client:      http.DefaultClient,
		Logger:      logger,
	}
}

func (s *SpringInitializr) Describe(name string) string {
	return fmt.Sprintf("SpringBoot subproject '%s'", name)
}

// ApplicationName derives the main class name for a subproject name.
func ApplicationName(name string) string {
	title := cases.Title(language.Und, cases.NoLower).String(name)
	title = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, title)
	return title + "Application"
}

// Params builds the query for one subproject. The opinionated defaults can be
// overridden except baseDir, which always equals the subproject name, and type,
// which must name a Gradle build. Notices describe ignored parameters.
func Params(name, defaultType string, user map[string]string) (url.Values, []string) {
	values := url.Values{}
	values.Set("applicationName", ApplicationName(name))
	values.Set("artifactId", name)
	values.Set("baseDir", name)
	values.Set("name", name)
	values.Set("packageName", name)
	values.Set("type", defaultType)

	var notices []string
	for key, value := range user {
		switch key {
		case "baseDir":
			notices = append(notices, fmt.Sprintf(
				"The '--baseDir' option will be ignored; the subproject is always created in '%s'.", name))
		case "type":
			if !springTypes[value] {
				notices = append(notices, fmt.Sprintf(
					"Only gradle-style SpringBoot projects are supported; ignoring '--type=%s' and using '%s'.", value, defaultType))
				continue
			}
			values.Set(key, value)
		default:
			values.Set(key, value)
		}
	}
	return values, notices
}

func (s *SpringInitializr) Generate(ctx context.Context, root string, names []string) ([]Result, error) {
	results := make([]Result, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		err := s.generateOne(ctx, root, name)
		if err != nil {
			s.Logger.Error("failed to create springboot subproject", "name", name, "error", err)
		} else {
			s.Logger.Info("created springboot subproject", "name", name)
		}
		results = append(results, Result{Name: name, Err: err})
	}
	return results, nil
}

func (s *SpringInitializr) generateOne(ctx context.Context, root, name string) error {
	dest := filepath.Join(root, name)
	if exists(dest) {
		return &fs.PathError{Op: "create", Path: dest, Err: fs.ErrExist}
	}

	params, notices := Params(name, s.DefaultType, s.Params)
	for _, notice := range notices {
		if s.Notify != nil {
			s.Notify(notice)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	s.Logger.Debug("downloading starter", "url", req.URL.String())

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("download starter: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("download starter: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	if err := extractTarGz(resp.Body, root, name); err != nil {
		_ = os.RemoveAll(dest)
		return fmt.Errorf("extract starter: %w", err)
	}
	return removeGenerated(dest, "settings.gradle.kts", "settings.gradle", "gradlew", "gradlew.bat", "gradle")
}

var errUnsafePath = errors.New("archive entry escapes the subproject directory")

// extractTarGz unpacks r into root. Every entry must live under root/baseDir.
func extractTarGz(r io.Reader, root, baseDir string) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return err
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		name := filepath.Clean(filepath.FromSlash(hdr.Name))
		if !filepath.IsLocal(name) || (name != baseDir && !strings.HasPrefix(name, baseDir+string(filepath.Separator))) {
			return fmt.Errorf("%s: %w", hdr.Name, errUnsafePath)
		}
		target := filepath.Join(root, name)

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := writeEntry(tr, target, fs.FileMode(hdr.Mode).Perm()); err != nil {
				return err
			}
		}
	}
}

func writeEntry(r io.Reader, target string, perm fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	if perm == 0 {
		perm = 0o644
	}
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
