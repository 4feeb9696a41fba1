// Package testsupport holds fixture helpers shared by package tests: file and
// archive builders, existence assertions, and throwaway configurations.
package testsupport
