package main

import (
	"flag"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"truco-server/internal/config"
)

var out = flag.String("o", "", "write the configuration to this file instead of stdout")

func main() {
	flag.Parse()

	var w io.Writer = os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			logrus.WithError(err).Fatal("could not create file")
		}
		defer f.Close()

		w = f
	}

	// secrets are never part of the defaults
	if err := yaml.NewEncoder(w).Encode(config.DefaultConfig()); err != nil {
		logrus.WithError(err).Fatal("could not encode configuration")
	}
}
