package main

// Multiply is the reference export.
func Multiply(a, b int64) int64 { return a * b }

// MultiplyInt and MultiplyI32 use narrower parameter types.
func MultiplyInt(a, b int) int { return a * b }

func MultiplyI32(a, b int32) int32 { return a * b }

// Function variables are looked up as pointers.
var MultiplyVar = func(a, b int64) int64 { return a * b }

var MultiplyIntVar = func(a, b int) int { return a * b }

var MultiplyI32Var = func(a, b int32) int32 { return a * b }

func Explode(a, b int64) int64 { panic("boom") }

func Describe(s string) string { return s }

var Answer = 42

func main() {}
