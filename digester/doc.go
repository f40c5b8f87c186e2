// Package digester tracks SHA256 digests of rendered
// outputs in companion .digest files, so an output whose
// new content matches what is already on disk can be left
// untouched.
package digester
