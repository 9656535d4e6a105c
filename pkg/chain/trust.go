package chain

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	modpath "golang.org/x/mod/module"

	"github.com/shuldan/clikit/pkg/config"
	"github.com/shuldan/clikit/pkg/errors"
)

const VendorDirConfigKey = "config.vendor-dir"

var DefaultNamespaces = []string{"github.com/shuldan"}

// Trust tells first-party command sources from third-party ones. It only
// decides whether the confirmation prompt carries a warning; it does not
// restrict anything.
type Trust struct {
	libraryDirs []string
	namespaces  []string
}

type trustSettings struct {
	workDir     string
	home        string
	manifests   []string
	modFile     string
	moduleCache string
	namespaces  []string
}

type TrustOption func(*trustSettings)

func WithWorkDir(dir string) TrustOption {
	return func(s *trustSettings) {
		s.workDir = dir
	}
}

func WithHome(dir string) TrustOption {
	return func(s *trustSettings) {
		s.home = dir
	}
}

func WithManifest(paths ...string) TrustOption {
	return func(s *trustSettings) {
		s.manifests = paths
	}
}

func WithModFile(path string) TrustOption {
	return func(s *trustSettings) {
		s.modFile = path
	}
}

func WithModuleCache(dir string) TrustOption {
	return func(s *trustSettings) {
		s.moduleCache = dir
	}
}

func WithNamespaces(namespaces ...string) TrustOption {
	return func(s *trustSettings) {
		s.namespaces = namespaces
	}
}

func NewTrust(opts ...TrustOption) (*Trust, error) {
	s := &trustSettings{namespaces: DefaultNamespaces}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.defaults(); err != nil {
		return nil, err
	}

	vendorDir, err := s.vendorDir()
	if err != nil {
		return nil, err
	}

	t := &Trust{}
	for _, dir := range []string{vendorDir, s.moduleCache} {
		if dir != "" {
			t.libraryDirs = append(t.libraryDirs, s.canonical(dir))
		}
	}

	namespaces := append([]string(nil), s.namespaces...)
	modulePath, err := s.modulePath()
	if err != nil {
		return nil, err
	}
	if modulePath != "" {
		namespaces = append(namespaces, modulePath)
	}
	for _, ns := range namespaces {
		ns = strings.Trim(ns, "/")
		if ns == "" {
			continue
		}
		t.namespaces = append(t.namespaces, ns)
		if escaped, err := modpath.EscapePath(ns); err == nil && escaped != ns {
			t.namespaces = append(t.namespaces, escaped)
		}
	}
	return t, nil
}

func (t *Trust) LibraryDirs() []string {
	return append([]string(nil), t.libraryDirs...)
}

// IsTrusted reports whether file is first-party. Files outside every
// library directory belong to the project and are trusted. Inside one, the
// path below the directory must start with an allowed namespace.
func (t *Trust) IsTrusted(file string) bool {
	if file == "" {
		return true
	}
	if abs, err := filepath.Abs(file); err == nil {
		file = abs
	}
	path := canonicalPath(file)

	for _, dir := range t.libraryDirs {
		rel, ok := strings.CutPrefix(path, dir+"/")
		if !ok {
			continue
		}
		for _, ns := range t.namespaces {
			if rel == ns || strings.HasPrefix(rel, ns+"/") || strings.HasPrefix(rel, ns+"@") {
				return true
			}
		}
		return false
	}
	return true
}

func (s *trustSettings) defaults() error {
	if s.workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return errors.ErrInternal.WithCause(err)
		}
		s.workDir = wd
	}
	if s.home == "" {
		s.home, _ = os.UserHomeDir()
	}
	if s.manifests == nil {
		s.manifests = []string{
			filepath.Join(s.workDir, "clikit.yaml"),
			filepath.Join(s.workDir, "clikit.json"),
		}
	}
	if s.modFile == "" {
		s.modFile = filepath.Join(s.workDir, "go.mod")
	}
	if s.moduleCache == "" {
		s.moduleCache = moduleCache(s.home)
	}
	return nil
}

func (s *trustSettings) vendorDir() (string, error) {
	dir := filepath.Join(s.workDir, "vendor")

	values, err := config.NewFileLoader(s.manifests...).Load()
	switch {
	case errors.Is(err, config.ErrNoConfigSource):
		return dir, nil
	case err != nil:
		return "", ErrManifest.WithDetail("path", strings.Join(s.manifests, ", ")).WithCause(err)
	}

	if configured := config.NewMapConfig(values).GetString(VendorDirConfigKey); configured != "" {
		dir = configured
	}
	return dir, nil
}

func (s *trustSettings) modulePath() (string, error) {
	data, err := os.ReadFile(s.modFile)
	if err != nil {
		return "", nil
	}
	f, err := modfile.ParseLax(s.modFile, data, nil)
	if err != nil {
		return "", ErrModFile.WithDetail("path", s.modFile).WithCause(err)
	}
	if f.Module == nil {
		return "", nil
	}
	return f.Module.Mod.Path, nil
}

func (s *trustSettings) canonical(path string) string {
	if s.home != "" {
		switch {
		case path == "~":
			path = s.home
		case strings.HasPrefix(path, "~/"):
			path = s.home + path[1:]
		}
		path = strings.ReplaceAll(path, "${HOME}", s.home)
		path = strings.ReplaceAll(path, "$HOME", s.home)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.workDir, path)
	}
	return canonicalPath(path)
}

func canonicalPath(path string) string {
	path = filepath.Clean(path)
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	return filepath.ToSlash(path)
}

func moduleCache(home string) string {
	if dir := os.Getenv("GOMODCACHE"); dir != "" {
		return dir
	}
	if gopath := os.Getenv("GOPATH"); gopath != "" {
		if first := filepath.SplitList(gopath)[0]; first != "" {
			return filepath.Join(first, "pkg", "mod")
		}
	}
	if home == "" {
		return ""
	}
	return filepath.Join(home, "go", "pkg", "mod")
}
