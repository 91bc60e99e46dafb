package main

import (
	"log"
)

var (
	GitCommit string
	GitTag    string
	BuildTime string
)

// @title Readify Bookstore API
// @version 1.0
// @description REST API exposing CRUD operations over books and authors.
// @BasePath /api/v1
func main() {
	app, err := NewApp()
	if err != nil {
		log.Fatal("application failed to initialize: ", err)
	}
	err = app.Run()
	if err != nil {
		log.Fatal("application exited. check logs for more details.", err)
	}
}
