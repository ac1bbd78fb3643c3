// Package tool contains helpers for tool naming. A canonical tool name joins a
// handler class (slashes replaced by underscores) and a method with "-", for
// example "system_clock-now".
package tool
