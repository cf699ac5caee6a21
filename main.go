package main

import "github.com/Kishore121523/AI-content-factory/internal/cli"

func main() {
	cli.Main()
}
