/*
* Copyright © 2023-2026 private, Darmstadt, Germany and/or its licensors
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
	"context"
	"fmt"
	"path/filepath"
	"sort"
)

// OutputSuffix suffix appended to the media file name for the metadata document
const OutputSuffix = ".json"

// Metadata key/value record of one media file. The content is owned by the
// reader which created it, no schema is assumed.
type Metadata map[string]any

// Keys returns the metadata keys in sorted order
func (md Metadata) Keys() []string {
	keys := make([]string, 0, len(md))
	for k := range md {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lines key/value pairs formatted one per line, sorted by key
func (md Metadata) Lines() []string {
	lines := make([]string, 0, len(md))
	for _, k := range md.Keys() {
		lines = append(lines, fmt.Sprintf("%s: %v", k, md[k]))
	}
	return lines
}

// MetadataReader reads the embedded metadata of one media file
type MetadataReader interface {
	ReadMetadata(ctx context.Context, path string) (Metadata, error)
}

// MetadataReaderFunc adapter to use a function as MetadataReader
type MetadataReaderFunc func(ctx context.Context, path string) (Metadata, error)

// ReadMetadata calls f(ctx, path)
func (f MetadataReaderFunc) ReadMetadata(ctx context.Context, path string) (Metadata, error) {
	return f(ctx, path)
}

// OutputName name of the metadata document of the given media file
func OutputName(mediaPath string) string {
	return filepath.Base(mediaPath) + OutputSuffix
}
