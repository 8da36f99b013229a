package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/bryanwahyu/ecosense/internal/cli"
)

func main() {
	_ = godotenv.Load()
	os.Exit(cli.Execute(context.Background()))
}
