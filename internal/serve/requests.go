package serve

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/react-three/create/internal/output"
	"github.com/react-three/create/internal/project"
)

// errStateFields is returned for callback states carrying more than the
// name, language and integration choices of the web form.
var errStateFields = errors.New("state may only carry the project name, language and integrations")

func hostSet(hosts []string) map[string]bool {
	set := make(map[string]bool, len(hosts))
	for _, h := range hosts {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			set[h] = true
		}
	}
	return set
}

// checkFiles rejects caller files the server must not act on: unsafe paths
// and remote files outside the configured https hosts.
func (s *server) checkFiles(files project.FileMap) error {
	if err := output.CheckPaths(files); err != nil {
		return err
	}
	for _, path := range files.Paths() {
		f := files[path]
		if !f.IsRemote() {
			continue
		}
		u, err := url.Parse(f.URL)
		if err != nil {
			return fmt.Errorf("remote file %s: %w", path, err)
		}
		if u.Scheme != "https" || !s.remoteHosts[strings.ToLower(u.Host)] {
			return fmt.Errorf("remote file %s: %s is not an allowed source", path, f.URL)
		}
	}
	return nil
}

func checkState(opts *project.Options) error {
	if len(opts.Files) > 0 || len(opts.Injections) > 0 || len(opts.Replacements) > 0 || len(opts.Dependencies) > 0 {
		return errStateFields
	}
	return nil
}
