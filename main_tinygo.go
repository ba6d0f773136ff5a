//go:build tinygo

package main

import (
	"halo/app"
	"halo/hal"
)

func main() {
	app.Run(hal.New())
}
