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

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"

	"github.com/go-faster/errors"
	"github.com/spf13/pflag"
	"github.com/tknie/brawmeta"
	"github.com/tknie/brawmeta/store"
	"github.com/tknie/brawmeta/tools"
	"github.com/tknie/log"
)

const toolName = "brawmeta"

const description = `This tool searches Blackmagic RAW clips in the input directory and all of
its subdirectories and writes the embedded metadata of every clip as JSON
document <clip>.json into the output directory.

`

type options struct {
	inputPath       string
	outputPath      string
	configFile      string
	reader          string
	extensions      []string
	verbose         bool
	ignoreMultipart bool
	json            bool
	cpuprofile      string
	memprofile      string
}

func init() {
	err := tools.InitLogLevelWithFile("brawmeta.log")
	if err != nil {
		fmt.Println("Error initialize logging:", err)
		os.Exit(255)
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin))
}

func newFlagSet(opts *options) *pflag.FlagSet {
	flags := pflag.NewFlagSet(toolName, pflag.ContinueOnError)
	flags.Usage = func() {
		fmt.Print(description)
		fmt.Println("Default flags:")
		flags.PrintDefaults()
	}
	flags.StringVar(&opts.cpuprofile, "cpuprofile", "", "write cpu profile to `file`")
	flags.StringVar(&opts.memprofile, "memprofile", "", "write memory profile to `file`")
	flags.StringVarP(&opts.inputPath, "inputpath", "i", "", "Path to the directory containing the files to be processed.")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output.")
	flags.StringVarP(&opts.outputPath, "outputpath", "o", "", "Path to the output directory. If not specified, pwd.")
	flags.StringVarP(&opts.configFile, "config", "c", "", "Configuration file (default "+tools.DefaultConfigFile+" if present)")
	flags.StringVarP(&opts.reader, "reader", "r", tools.ReaderExifTool, "Metadata reader: exiftool or exif")
	flags.StringSliceVarP(&opts.extensions, "extension", "e", []string{tools.DefaultExtension}, "File extensions to search for")
	flags.BoolVarP(&opts.ignoreMultipart, "ignore-multipart", "m", false, "Only use the first matching file of each directory")
	flags.BoolVarP(&opts.json, "json", "j", false, "Output tool start and end in JSON format")
	return flags
}

// mergeFlags overrides configuration values with the flags given on the
// command line, flags not given keep the file or environment value
func mergeFlags(config *tools.Config, opts *options, flags *pflag.FlagSet) {
	if flags.Changed("inputpath") {
		config.InputPath = opts.inputPath
	}
	if flags.Changed("outputpath") {
		config.OutputPath = opts.outputPath
	}
	if flags.Changed("reader") {
		config.Reader = opts.reader
	}
	if flags.Changed("extension") {
		config.Extensions = opts.extensions
	}
	if flags.Changed("verbose") {
		config.Verbose = opts.verbose
	}
	if flags.Changed("ignore-multipart") {
		config.IgnoreMultipart = opts.ignoreMultipart
	}
}

func run(args []string, stdin io.Reader) int {
	opts := &options{}
	flags := newFlagSet(opts)
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Println("Error parsing flags:", err)
		return 1
	}

	config, err := loadConfig(opts.configFile)
	if err != nil {
		fmt.Println("Error reading configuration:", err)
		return 1
	}
	mergeFlags(config, opts, flags)

	if config.InputPath == "" {
		config.InputPath, err = tools.PromptInputPath(stdin, os.Stdout)
		if err != nil {
			fmt.Println("Input path is required")
			flags.Usage()
			return 1
		}
	}

	if opts.cpuprofile != "" {
		f, err := os.Create(opts.cpuprofile)
		if err != nil {
			panic("could not create CPU profile: " + err.Error())
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			panic("could not start CPU profile: " + err.Error())
		}
		defer pprof.StopCPUProfile()
	}
	defer writeMemProfile(opts.memprofile)

	brawmeta.InitTool(toolName, opts.json)
	err = export(config, opts.json)
	brawmeta.FinalizeTool(toolName, opts.json, err)
	if err != nil {
		log.Log.Errorf("Metadata export failed: %v", err)
		return 1
	}
	return 0
}

func loadConfig(configFile string) (*tools.Config, error) {
	if configFile != "" {
		return tools.LoadConfig(configFile, true)
	}
	return tools.LoadConfig(tools.DefaultConfigFile, false)
}

func export(config *tools.Config, json bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fs := store.NewOSFS()
	reader, err := config.NewReader(fs)
	if err != nil {
		return err
	}
	out := os.Stdout
	if json {
		out = os.Stderr
	}
	return tools.MetadataExport(ctx, &tools.MetadataExportParameter{
		InputPath:       tools.CleanInputPath(config.InputPath),
		OutputPath:      config.OutputPath,
		Extensions:      tools.NormalizeExtensions(config.Extensions),
		Verbose:         config.Verbose,
		IgnoreMultipart: config.IgnoreMultipart,
		FS:              fs,
		Reader:          reader,
		Out:             out,
	})
}

func writeMemProfile(file string) {
	if file != "" {
		f, err := os.Create(file)
		if err != nil {
			panic("could not create memory profile: " + err.Error())
		}
		defer f.Close()
		runtime.GC() // get up-to-date statistics
		if err := pprof.WriteHeapProfile(f); err != nil {
			panic("could not write memory profile: " + err.Error())
		}
		fmt.Println("Memory profile written")
	}

}
