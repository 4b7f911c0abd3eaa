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
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/tknie/log"
)

// DefaultExifTool program name of exiftool searched in PATH
const DefaultExifTool = "exiftool"

// sourceFileKey is added by exiftool to every record
const sourceFileKey = "SourceFile"

// ErrNoMetadata the reader output contains no record
var ErrNoMetadata = errors.New("no metadata record returned")

// ExifToolReader reads metadata by calling the external exiftool program
type ExifToolReader struct {
	Program string
	Args    []string
}

// NewExifToolReader new exiftool based reader, empty program uses exiftool in PATH
func NewExifToolReader(program string, args ...string) *ExifToolReader {
	if program == "" {
		program = DefaultExifTool
	}
	return &ExifToolReader{Program: program, Args: args}
}

func (r *ExifToolReader) arguments(path string) []string {
	args := []string{"-json", "-n"}
	args = append(args, r.Args...)
	// exiftool treats leading dash as option
	if strings.HasPrefix(path, "-") {
		path = "./" + path
	}
	return append(args, path)
}

// ReadMetadata runs exiftool on the given file and decodes its JSON output
func (r *ExifToolReader) ReadMetadata(ctx context.Context, path string) (Metadata, error) {
	args := r.arguments(path)
	log.Log.Debugf("Call %s %v", r.Program, args)
	cmd := exec.CommandContext(ctx, r.Program, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		log.Log.Errorf("Error calling %s on %s: %v %s", r.Program, path, err, msg)
		if msg != "" {
			return nil, errors.Wrapf(err, "%s %s: %s", r.Program, path, msg)
		}
		return nil, errors.Wrapf(err, "%s %s", r.Program, path)
	}
	md, err := DecodeExifToolOutput(output)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s output for %s", r.Program, path)
	}
	return md, nil
}

// DecodeExifToolOutput decodes the JSON array written by exiftool -json and
// returns the first record. Numbers are kept verbatim.
func DecodeExifToolOutput(data []byte) (Metadata, error) {
	var records []Metadata
	d := jx.DecodeBytes(data)
	err := d.Arr(func(d *jx.Decoder) error {
		md := Metadata{}
		if err := d.Obj(func(d *jx.Decoder, key string) error {
			v, err := decodeValue(d)
			if err != nil {
				return errors.Wrapf(err, "field %q", key)
			}
			md[key] = v
			return nil
		}); err != nil {
			return err
		}
		records = append(records, md)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoMetadata
	}
	md := records[0]
	delete(md, sourceFileKey)
	return md, nil
}

func decodeValue(d *jx.Decoder) (any, error) {
	switch d.Next() {
	case jx.String:
		return d.Str()
	case jx.Number:
		n, err := d.Num()
		if err != nil {
			return nil, err
		}
		return json.Number(n.String()), nil
	case jx.Bool:
		return d.Bool()
	case jx.Null:
		return nil, d.Null()
	case jx.Array:
		values := make([]any, 0)
		err := d.Arr(func(d *jx.Decoder) error {
			v, err := decodeValue(d)
			if err != nil {
				return err
			}
			values = append(values, v)
			return nil
		})
		return values, err
	case jx.Object:
		m := make(map[string]any)
		err := d.Obj(func(d *jx.Decoder, key string) error {
			v, err := decodeValue(d)
			if err != nil {
				return err
			}
			m[key] = v
			return nil
		})
		return m, err
	default:
		return nil, errors.Errorf("unexpected JSON token %v", d.Next())
	}
}
