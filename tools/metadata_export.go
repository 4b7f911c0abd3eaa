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
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/docker/go-units"
	"github.com/go-faster/errors"
	"github.com/go-git/go-billy/v5"
	"github.com/tknie/brawmeta/store"
	"github.com/tknie/log"
)

const timeFormat = "2006-01-02 15:04:05"

// MetadataExportParameter parameters of one metadata export run
type MetadataExportParameter struct {
	InputPath       string
	OutputPath      string
	Extensions      []string
	Verbose         bool
	IgnoreMultipart bool
	FS              billy.Filesystem
	Reader          store.MetadataReader
	Out             io.Writer
}

type exportStat struct {
	found     uint64
	processed uint64
	wrote     uint64
	bytes     int64
}

func (s *exportStat) output(out io.Writer, start time.Time) {
	fmt.Fprintf(out, "%s Export summary (used %v)\n", time.Now().Format(timeFormat), time.Since(start).Round(time.Millisecond))
	fmt.Fprintf(out, "  %-10s: %d\n", "Found", s.found)
	fmt.Fprintf(out, "  %-10s: %d\n", "Processed", s.processed)
	fmt.Fprintf(out, "  %-10s: %d (%s)\n", "Wrote", s.wrote, units.HumanSize(float64(s.bytes)))
}

func (parameter *MetadataExportParameter) defaults() error {
	if parameter.FS == nil {
		parameter.FS = store.NewOSFS()
	}
	if parameter.Out == nil {
		parameter.Out = os.Stdout
	}
	if parameter.Reader == nil {
		return errors.New("no metadata reader defined")
	}
	if len(parameter.Extensions) == 0 {
		parameter.Extensions = []string{DefaultExtension}
	}
	if parameter.OutputPath == "" {
		wd, err := os.Getwd()
		if err != nil {
			return errors.Wrap(err, "evaluate working directory")
		}
		parameter.OutputPath = wd
	}
	return nil
}

func (parameter *MetadataExportParameter) createOutputPath() error {
	fi, err := parameter.FS.Stat(parameter.OutputPath)
	if err == nil {
		if !fi.IsDir() {
			return errors.Errorf("output path %s is no directory", parameter.OutputPath)
		}
		return nil
	}
	log.Log.Debugf("Create output directory: %s", parameter.OutputPath)
	if err := parameter.FS.MkdirAll(parameter.OutputPath, 0755); err != nil {
		return errors.Wrapf(err, "create output directory %s", parameter.OutputPath)
	}
	return nil
}

// MetadataExport searches all media files in the input path and writes the
// metadata of each file as JSON document into the output path. If no file is
// found the message is printed and the run ends without error. Any other
// failure stops the export at the failing file.
func MetadataExport(ctx context.Context, parameter *MetadataExportParameter) error {
	if err := parameter.defaults(); err != nil {
		return err
	}
	if err := parameter.createOutputPath(); err != nil {
		return err
	}

	filePaths, err := FindFiles(parameter.FS, parameter.InputPath, parameter.Extensions, parameter.IgnoreMultipart)
	if err != nil {
		if errors.Is(err, ErrNoFilesFound) {
			fmt.Fprintln(parameter.Out, err)
			return nil
		}
		return err
	}

	start := time.Now()
	statCount := &exportStat{found: uint64(len(filePaths))}
	for _, filePath := range filePaths {
		if err := parameter.export(ctx, statCount, filePath); err != nil {
			log.Log.Errorf("Export of %s aborted: %v", filePath, err)
			return err
		}
	}
	statCount.output(parameter.Out, start)
	return nil
}

func (parameter *MetadataExportParameter) export(ctx context.Context, statCount *exportStat, filePath string) error {
	outputFile := parameter.FS.Join(parameter.OutputPath, store.OutputName(filePath))

	md, err := parameter.Reader.ReadMetadata(ctx, filePath)
	if err != nil {
		return errors.Wrapf(err, "read metadata of %s", filePath)
	}
	statCount.processed++
	if parameter.Verbose {
		fmt.Fprintf(parameter.Out, "Processing %s\n", filePath)
		for _, line := range md.Lines() {
			fmt.Fprintln(parameter.Out, line)
		}
	}

	fmt.Fprintf(parameter.Out, "Writing to %s\n", outputFile)
	n, err := store.WriteMetadata(parameter.FS, outputFile, md)
	if err != nil {
		return err
	}
	statCount.wrote++
	statCount.bytes += int64(n)
	return nil
}
