package handlers

// MaxUploadSize re-exports maxUploadSize for the external test package.
const MaxUploadSize = maxUploadSize
