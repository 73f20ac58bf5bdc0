// Command openapi-rpc-codegen is the CLI front-end over pkg/codegen: it
// owns the side effects (loading the spec from disk, writing generated
// files, printing progress) that the library itself deliberately stays
// free of.
package main
