// Package project runs dependency resolution for one project: it finds the
// entry file, builds the graph, resolves the compile order and, when asked,
// lists source files under the root that the entry never reaches.
//
// Projects are independent. A Runner can be shared by any number of
// concurrent Run calls; each call owns its graph and resolver state.
package project
