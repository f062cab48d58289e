// Copyright 2018 Fabian Wenzelmann
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/AaronMcKenney/gotiles/web"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

func main() {
	var addr string
	var maxAge, interval time.Duration
	var verbose bool
	flagSet := pflag.NewFlagSet("backend", pflag.ContinueOnError)
	flagSet.StringVar(&addr, "addr", ":8085", "address to listen on")
	flagSet.DurationVar(&maxAge, "max-age", 30*time.Minute, "remove sessions not used for this long")
	flagSet.DurationVar(&interval, "filter-interval", time.Minute, "how often expired sessions are removed")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "log debug messages")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if verbose {
		log.SetLevel(log.DebugLevel)
	}

	memStorage := web.NewMemStorage()
	context := web.NewContext(memStorage)
	done := web.RunFilter(memStorage, maxAge, interval)
	defer close(done)

	mux := http.NewServeMux()
	web.DefaultHandlers(context, mux)
	log.WithField("addr", addr).Info("Starting backend")
	log.Fatal(http.ListenAndServe(addr, mux))
}
