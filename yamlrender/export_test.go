package yamlrender

// DecodeAllDocs exposes decodeAllDocs to the
// yamlrender_test package.
var DecodeAllDocs = decodeAllDocs
