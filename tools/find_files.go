/*
* Copyright © 2018-2026 private, Darmstadt, Germany and/or its licensors
*
* SPDX-License-Identifier: Apache-2.0
*
*   Licensed under the Apache License, Version 2.0 (the "License");
*   you may not use this file except in compliance with the License.
*   You may obtain a copy of the License at
*
*       http://www.apache.org/licenses/LICENSE-2.0
*
*   Unless required by applicable law or agreed to in writing, software
*   distributed under the License is distributed on an "AS IS" BASIS,
*   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
*   See the License for the specific language governing permissions and
*   limitations under the License.
*
 */

package tools

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/tknie/log"
)

// DefaultExtension extension of Blackmagic RAW clips
const DefaultExtension = ".braw"

// ErrNoFilesFound no file matching the requested extensions
var ErrNoFilesFound = errors.New("no files found")

// NotFoundError returned by FindFiles if nothing matched
type NotFoundError struct {
	Extensions []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("No files with the extensions %s were found.", strings.Join(e.Extensions, " "))
}

// Is matches ErrNoFilesFound
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNoFilesFound
}

// NormalizeExtensions trims the extensions and adds a leading dot if missing,
// empty entries are dropped
func NormalizeExtensions(extensions []string) []string {
	result := make([]string, 0, len(extensions))
	for _, e := range extensions {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		result = append(result, e)
	}
	return result
}

func hasSuffix(name string, extensions []string) bool {
	for _, e := range extensions {
		if strings.HasSuffix(name, e) {
			return true
		}
	}
	return false
}

// FindFiles walks root recursively and returns all files ending with one of the
// extensions. The order is the walk order of the filesystem and not guaranteed
// to be stable. With ignoreMultipart only the first match of each directory is
// returned. Unreadable entries below root are skipped, a root which is no
// directory matches nothing.
func FindFiles(fs billy.Filesystem, root string, extensions []string, ignoreMultipart bool) ([]string, error) {
	filePaths := make([]string, 0)
	matchedDirs := make(map[string]bool)
	err := util.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			log.Log.Debugf("Skip unreadable entry %s: %v", path, err)
			return filepath.SkipDir
		}
		if path == root && info != nil && !info.IsDir() {
			log.Log.Debugf("Root is no directory: %s", path)
			return nil
		}
		if info == nil || info.IsDir() {
			log.Log.Debugf("Info empty or dir: %s", path)
			return nil
		}
		if !hasSuffix(info.Name(), extensions) {
			log.Log.Debugf("Suffix not requested: %s", path)
			return nil
		}
		if ignoreMultipart {
			dir := filepath.Dir(path)
			if matchedDirs[dir] {
				log.Log.Debugf("Ignore multipart file: %s", path)
				return nil
			}
			matchedDirs[dir] = true
		}
		filePaths = append(filePaths, path)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walk %s", root)
	}
	if len(filePaths) == 0 {
		return nil, &NotFoundError{Extensions: extensions}
	}
	log.Log.Infof("Found %d files in %s", len(filePaths), root)
	return filePaths, nil
}
