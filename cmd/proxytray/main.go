package main

import (
	_ "proxytray/internal/publishers/file"
	_ "proxytray/internal/publishers/github"
	_ "proxytray/internal/publishers/stdout"
)

func main() {
	Execute()
}
