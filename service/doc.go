// Package service provides reusable gist operations over local files:
// create, read, edit, clone and push.
//
// This package is intended for embedding gist capabilities into other programs
// without shelling out to the CLI.
package service
