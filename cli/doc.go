// Package cli wires the prepare and run phases to cobra commands. Every flag can also be
// set through a TINY_ORDERS_ prefixed environment variable.
package cli
