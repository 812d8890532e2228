// Package app contains the core application logic. It owns the App struct and
// its configuration, and runs one resolve pass over the loaded declaration
// tree. It knows nothing about the CLI that drives it.
package app
