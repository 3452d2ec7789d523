// @title          Chouchef API
// @version        1.0
// @description    Shopping lists backed by a shared food catalog.
// @BasePath       /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
