/*
* Copyright © 2026 private, Darmstadt, Germany and/or its licensors
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

package store

import (
	"encoding/json"
	"os"

	"github.com/go-faster/errors"
	"github.com/go-git/go-billy/v5"
	"github.com/tknie/log"
	"go.uber.org/multierr"
)

const indent = "    "

// WriteMetadata writes metadata as indented JSON document. An existing file is
// truncated. Returns the number of bytes written.
func WriteMetadata(fs billy.Filesystem, filename string, md Metadata) (n int, err error) {
	data, err := json.MarshalIndent(md, "", indent)
	if err != nil {
		return 0, errors.Wrapf(err, "marshal metadata for %s", filename)
	}
	data = append(data, '\n')

	f, err := fs.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return 0, errors.Wrapf(err, "create %s", filename)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	n, err = f.Write(data)
	if err != nil {
		return n, errors.Wrapf(err, "write %s", filename)
	}
	log.Log.Debugf("Wrote metadata file %s (%d bytes)", filename, n)
	return n, nil
}
