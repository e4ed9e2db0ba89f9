// Package shell generates shell wrapper functions. gitpr cannot change its
// parent shell's directory, so it records directory switches in a breadcrumb
// file; the generated wrappers run gitpr and cd into whatever the breadcrumb
// points at afterwards.
package shell

import (
	_ "embed"
)

//go:embed scripts/gitpr.bash
var bashScript string

//go:embed scripts/gitpr.zsh
var zshScript string

//go:embed scripts/gitpr.fish
var fishScript string

// FunctionGenerator generates shell functions.
type FunctionGenerator struct{}

// NewFunctionGenerator creates a new FunctionGenerator.
func NewFunctionGenerator() *FunctionGenerator {
	return &FunctionGenerator{}
}

// GenerateBash returns the bash shell function.
func (g *FunctionGenerator) GenerateBash() string {
	return bashScript
}

// GenerateZsh returns the zsh shell function.
func (g *FunctionGenerator) GenerateZsh() string {
	return zshScript
}

// GenerateFish returns the fish shell function.
func (g *FunctionGenerator) GenerateFish() string {
	return fishScript
}
