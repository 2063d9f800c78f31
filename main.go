package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// .env 仅提供默认值，文件不存在时忽略
	_ = godotenv.Load()
	log.SetFlags(0)
	log.SetPrefix("pauta: ")

	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:           "pauta",
	Short:         "print lyrics on staff paper",
	SilenceUsage:  true,
	SilenceErrors: true,
}
