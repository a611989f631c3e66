// Package catalog holds the table of supported package types. Every type tag
// has the form "<framework>-<kind>" and maps to a relative install path
// template plus the naming steps that turn a package name into {$name}.
//
// The default table is embedded from types.yaml and checked against
// schema/catalog.schema.json. Projects can layer their own YAML file on top
// with Merge.
package catalog
