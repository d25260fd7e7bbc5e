package platform

// Package platform contains OS integration glue: filesystem helpers, the
// atomic save of downloaded files, and revealing saved files in the OS file
// manager.
