// Package modules contains the self-contained application features.
//
// Each subdirectory is a module implementing the `module.Module` interface.
// Modules are listed in `internal/app/modules.go`, register their services
// with the injector and are booted by the server at startup.
package modules
