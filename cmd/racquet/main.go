package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ezBadminton/racquet/internal/cmd"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})
	logrus.SetLevel(logrus.InfoLevel)

	if err := racquet(); err != nil {
		logrus.Fatal(err)
	}
}

func racquet() error {
	root := cmd.Root()
	root.SetArgs(os.Args[1:])
	return root.Execute()
}
