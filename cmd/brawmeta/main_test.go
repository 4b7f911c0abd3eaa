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

package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tknie/brawmeta/tools"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "brawmeta.yaml")
	require.NoError(t, os.WriteFile(file, []byte(content), 0644))
	return file
}

func parseMerged(t *testing.T, configFile string, args ...string) *tools.Config {
	t.Helper()
	opts := &options{}
	flags := newFlagSet(opts)
	require.NoError(t, flags.Parse(args))
	config, err := tools.LoadConfig(configFile, true)
	require.NoError(t, err)
	mergeFlags(config, opts, flags)
	return config
}

func TestMergeFlagsKeepsConfig(t *testing.T) {
	t.Setenv("BRAWMETA_OUTPUTPATH", "")
	file := writeConfig(t, "inputpath: /mnt/card\noutputpath: /srv/meta\nverbose: true\nignoremultipart: true\nreader: exif\n")
	config := parseMerged(t, file)
	assert.Equal(t, "/mnt/card", config.InputPath)
	assert.Equal(t, "/srv/meta", config.OutputPath)
	assert.Equal(t, tools.ReaderExif, config.Reader)
	assert.Equal(t, []string{tools.DefaultExtension}, config.Extensions)
	assert.True(t, config.Verbose)
	assert.True(t, config.IgnoreMultipart)
}

func TestMergeFlagsOverrideConfig(t *testing.T) {
	t.Setenv("BRAWMETA_OUTPUTPATH", "")
	file := writeConfig(t, "inputpath: /mnt/card\noutputpath: /srv/meta\nverbose: true\nignoremultipart: true\n")
	config := parseMerged(t, file, "-i", "/mnt/other", "-o", "/tmp/out", "--verbose=false",
		"--ignore-multipart=false", "-r", "exif", "-e", ".braw,.mov")
	assert.Equal(t, "/mnt/other", config.InputPath)
	assert.Equal(t, "/tmp/out", config.OutputPath)
	assert.Equal(t, tools.ReaderExif, config.Reader)
	assert.Equal(t, []string{".braw", ".mov"}, config.Extensions)
	assert.False(t, config.Verbose)
	assert.False(t, config.IgnoreMultipart)

	config = parseMerged(t, writeConfig(t, "verbose: false\n"), "-v", "-m")
	assert.True(t, config.Verbose)
	assert.True(t, config.IgnoreMultipart)
}

func TestMergeFlagsEnvironment(t *testing.T) {
	t.Setenv("BRAWMETA_OUTPUTPATH", "/env/out")
	file := writeConfig(t, "outputpath: /srv/meta\n")
	assert.Equal(t, "/env/out", parseMerged(t, file).OutputPath)
	assert.Equal(t, "/flag/out", parseMerged(t, file, "--outputpath", "/flag/out").OutputPath)
}

func runDirectories(t *testing.T) (string, string) {
	t.Helper()
	t.Setenv("BRAWMETA_OUTPUTPATH", "")
	t.Setenv("BRAWMETA_EXTENSIONS", "")
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(oldWd) })
	return t.TempDir(), filepath.Join(t.TempDir(), "out")
}

func outputNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestRunNotFound(t *testing.T) {
	inputDir, outputDir := runDirectories(t)
	require.NoError(t, os.WriteFile(filepath.Join(inputDir, "readme.md"), []byte("notes"), 0644))

	code := run([]string{"-i", inputDir, "-o", outputDir}, strings.NewReader(""))
	assert.Equal(t, 0, code)
	assert.Empty(t, outputNames(t, outputDir))
}

// exifClip JPEG stream with an EXIF Make tag, readable by the exif reader
func exifClip(makeTag string) []byte {
	makeBytes := append([]byte(makeTag), 0x00)
	tiff := []byte{'I', 'I', 42, 0, 8, 0, 0, 0, 1, 0, 0x0F, 0x01, 0x02, 0x00,
		byte(len(makeBytes)), 0, 0, 0, 26, 0, 0, 0, 0, 0, 0, 0}
	tiff = append(tiff, makeBytes...)
	payload := append([]byte("Exif\x00\x00"), tiff...)
	length := len(payload) + 2
	jpeg := []byte{0xFF, 0xD8, 0xFF, 0xE1, byte(length >> 8), byte(length)}
	jpeg = append(jpeg, payload...)
	return append(jpeg, 0xFF, 0xD9)
}

func TestRunExport(t *testing.T) {
	inputDir, outputDir := runDirectories(t)
	clipDir := filepath.Join(inputDir, "day1", "cam")
	require.NoError(t, os.MkdirAll(clipDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(clipDir, "clip_A.braw"), exifClip("Blackmagic Design"), 0644))

	code := run([]string{"-i", "'" + inputDir + "'", "-o", outputDir, "-r", "exif"}, strings.NewReader(""))
	require.Equal(t, 0, code)
	assert.Equal(t, []string{"clip_A.braw.json"}, outputNames(t, outputDir))

	data, err := os.ReadFile(filepath.Join(outputDir, "clip_A.braw.json"))
	require.NoError(t, err)
	var md map[string]any
	require.NoError(t, json.Unmarshal(data, &md))
	assert.Equal(t, "Blackmagic Design", md["Make"])
}

func TestRunReaderFailure(t *testing.T) {
	inputDir, outputDir := runDirectories(t)
	require.NoError(t, os.WriteFile(filepath.Join(inputDir, "broken.braw"), []byte("no metadata"), 0644))

	code := run([]string{"-i", inputDir, "-o", outputDir, "-r", "exif"}, strings.NewReader(""))
	assert.Equal(t, 1, code)
	assert.Empty(t, outputNames(t, outputDir))
}

func TestRunPromptInputPath(t *testing.T) {
	inputDir, outputDir := runDirectories(t)
	require.NoError(t, os.WriteFile(filepath.Join(inputDir, "readme.md"), []byte("notes"), 0644))

	assert.Equal(t, 0, run([]string{"-o", outputDir}, strings.NewReader(inputDir+"\n")))
	assert.Equal(t, 1, run([]string{"-o", outputDir}, strings.NewReader("")))
}

func TestRunInvalidFlag(t *testing.T) {
	runDirectories(t)
	assert.Equal(t, 1, run([]string{"--no-such-flag"}, strings.NewReader("")))
	assert.Equal(t, 1, run([]string{"-i", "in", "-r", "ffprobe"}, strings.NewReader("")))
}
