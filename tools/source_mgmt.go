/*
* Copyright © 2024-2026 private, Darmstadt, Germany and/or its licensors
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
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-git/go-billy/v5"
	"github.com/tknie/brawmeta/store"
	"github.com/tknie/log"
	"gopkg.in/yaml.v2"
)

// DefaultConfigFile configuration file read from the working directory if present
const DefaultConfigFile = "brawmeta.yaml"

const (
	// ReaderExifTool metadata read by external exiftool program
	ReaderExifTool = "exiftool"
	// ReaderExif metadata read by the built-in EXIF decoder
	ReaderExif = "exif"
)

const inputPrompt = "Path to the directory containing the files to be processed"

// Config brawmeta configuration
type Config struct {
	InputPath       string   `yaml:"inputpath"`
	OutputPath      string   `yaml:"outputpath"`
	Extensions      []string `yaml:"extensions"`
	Reader          string   `yaml:"reader"`
	ExifTool        string   `yaml:"exiftool"`
	ExifToolArgs    []string `yaml:"exiftoolargs"`
	IgnoreMultipart bool     `yaml:"ignoremultipart"`
	Verbose         bool     `yaml:"verbose"`
}

// NewConfig configuration with default values
func NewConfig() *Config {
	return &Config{Extensions: []string{DefaultExtension}, Reader: ReaderExifTool}
}

// ReadConfigFile read config file
func ReadConfigFile(file string) ([]byte, error) {
	configFile, err := os.Open(file)
	if err != nil {
		log.Log.Debugf("Open file error: %#v", err)
		return nil, errors.Wrapf(err, "open file err of %s", file)
	}
	defer configFile.Close()

	var buffer bytes.Buffer
	_, err = io.Copy(&buffer, configFile)
	if err != nil {
		log.Log.Debugf("Read file error: %#v", err)
		return nil, errors.Wrapf(err, "read file err of %s", file)
	}
	return buffer.Bytes(), nil
}

// LoadConfig loads the yaml configuration file and applies environment
// overrides. A missing file is only an error if mustExist is set.
func LoadConfig(file string, mustExist bool) (*Config, error) {
	config := NewConfig()
	if file != "" {
		byteValue, err := ReadConfigFile(file)
		switch {
		case err == nil:
			err = yaml.Unmarshal(byteValue, config)
			if err != nil {
				log.Log.Debugf("Unmarshal error: %#v", err)
				return nil, errors.Wrapf(err, "parse config %s", file)
			}
			log.Log.Infof("Configuration loaded from %s", file)
		case mustExist || !errors.Is(err, os.ErrNotExist):
			return nil, err
		}
	}
	config.InputPath = os.ExpandEnv(config.InputPath)
	config.OutputPath = os.ExpandEnv(config.OutputPath)
	config.ExifTool = os.ExpandEnv(config.ExifTool)
	config.applyEnvironment()
	return config, nil
}

func (config *Config) applyEnvironment() {
	if e := os.Getenv("BRAWMETA_EXTENSIONS"); e != "" {
		config.Extensions = strings.Split(e, ",")
	}
	if e := os.Getenv("BRAWMETA_EXIFTOOL"); e != "" {
		config.ExifTool = e
	}
	if e := os.Getenv("BRAWMETA_OUTPUTPATH"); e != "" {
		config.OutputPath = e
	}
}

// NewReader metadata reader selected by the configuration
func (config *Config) NewReader(fs billy.Filesystem) (store.MetadataReader, error) {
	switch strings.ToLower(config.Reader) {
	case "", ReaderExifTool:
		return store.NewExifToolReader(config.ExifTool, config.ExifToolArgs...), nil
	case ReaderExif:
		return store.NewExifReader(fs), nil
	default:
		return nil, errors.Errorf("unknown metadata reader %q", config.Reader)
	}
}

// CleanInputPath strips surrounding single and then double quotes, as left by
// drag and drop into a terminal
func CleanInputPath(path string) string {
	return strings.Trim(strings.Trim(path, "'"), "\"")
}

// PromptInputPath asks for the input directory until a non-empty line is read
func PromptInputPath(in io.Reader, out io.Writer) (string, error) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "%s: ", inputPrompt)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", errors.Wrap(err, "read input path")
			}
			return "", errors.Wrap(io.ErrUnexpectedEOF, "read input path")
		}
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			return line, nil
		}
	}
}
