// Package clientcmd builds the cobra commands that operate on a local tuid
// data directory, kept out of package main so the CLI wiring stays small.
package clientcmd
