package audit

import (
	"strings"

	"github.com/karrick/godirwalk"

	"github.com/agentstation/modelaudit/pkg/errors"
)

// listTestFiles returns the set of per-module test files in the tests
// directory: regular files whose name starts with the test prefix followed
// by the module prefix, minus the shared common-test files.
func (a *Auditor) listTestFiles() (map[string]bool, error) {
	prefix := a.config.Conventions.TestFilePrefix + a.config.Conventions.ModulePrefix
	suffix := a.config.Conventions.TestFileSuffix

	ignored := make(map[string]bool, len(a.config.CommonTestFiles))
	for _, stem := range a.config.CommonTestFiles {
		ignored[stem] = true
	}

	files := make(map[string]bool)
	err := eachRegularFile(a.config.TestsDir, func(name string) {
		if !strings.HasPrefix(name, prefix) {
			return
		}
		if ignored[strings.TrimSuffix(name, suffix)] {
			return
		}
		files[name] = true
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// listDocFiles returns the set of model documentation pages: regular files
// with the doc extension, minus the shared pages that document no concrete
// classes.
func (a *Auditor) listDocFiles() (map[string]bool, error) {
	suffix := a.config.Conventions.DocFileSuffix

	ignored := make(map[string]bool, len(a.config.SharedDocFiles))
	for _, stem := range a.config.SharedDocFiles {
		ignored[stem] = true
	}

	files := make(map[string]bool)
	err := eachRegularFile(a.config.DocsDir, func(name string) {
		if !strings.HasSuffix(name, suffix) {
			return
		}
		if ignored[strings.TrimSuffix(name, suffix)] {
			return
		}
		files[name] = true
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// eachRegularFile calls fn with the name of every regular file directly
// inside dir. Subdirectories are not descended into; the corpora are flat.
func eachRegularFile(dir string, fn func(name string)) error {
	dirents, err := godirwalk.ReadDirents(dir, nil)
	if err != nil {
		return errors.WrapIO("list", dir, err)
	}
	for _, dirent := range dirents {
		if !dirent.IsRegular() {
			continue
		}
		fn(dirent.Name())
	}
	return nil
}
