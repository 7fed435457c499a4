// cmd/fragnet/main.go
package main

import (
	"fragnet/internal/app"
	"fragnet/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
