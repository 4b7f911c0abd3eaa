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
	"encoding/json"
	"os"

	"github.com/go-faster/errors"
	"github.com/tknie/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel evaluates the log level out of the ENABLE_DEBUG environment
func LogLevel() zapcore.Level {
	switch os.Getenv("ENABLE_DEBUG") {
	case "1":
		return zapcore.DebugLevel
	case "2":
		return zapcore.InfoLevel
	default:
		return zapcore.ErrorLevel
	}
}

// InitLogLevelWithFile initialize global logger writing into fileName located
// in the LOGPATH directory. Without LOGPATH and ENABLE_DEBUG errors are
// logged to stderr only, no log file is created.
func InitLogLevelWithFile(fileName string) (err error) {
	level := LogLevel()
	p := os.Getenv("LOGPATH")
	name := "stderr"
	switch {
	case p != "":
		name = p + string(os.PathSeparator) + fileName
	case os.Getenv("ENABLE_DEBUG") != "":
		name = "." + string(os.PathSeparator) + fileName
	}

	rawJSON := []byte(`{
		"level": "error",
		"encoding": "console",
		"outputPaths": [ "brawmeta.log"],
		"errorOutputPaths": ["stderr"],
		"encoderConfig": {
		  "messageKey": "message",
		  "levelKey": "level",
		  "levelEncoder": "lowercase",
		  "timeKey": "time",
		  "timeEncoder": "iso8601"
		}
	  }`)

	var cfg zap.Config
	if err := json.Unmarshal(rawJSON, &cfg); err != nil {
		return errors.Wrap(err, "initialize logging (json)")
	}
	cfg.Level.SetLevel(level)
	cfg.OutputPaths = []string{name}
	logger, err := cfg.Build()
	if err != nil {
		return errors.Wrap(err, "initialize logging (build)")
	}

	log.Log = logger.Sugar()
	log.Log.Infof("Start logging with level %s", level)
	log.SetDebugLevel(level == zapcore.DebugLevel)

	return nil
}
