//go:build !unix

package preflight

// CheckDiskSpace is not implemented on this platform.
func (c *Checker) CheckDiskSpace(string) CheckResult {
	return CheckResult{Name: "disk_space", Status: StatusWarn, Message: "not checked on this platform"}
}

// CheckFileDescriptors is not implemented on this platform.
func (c *Checker) CheckFileDescriptors() CheckResult {
	return CheckResult{Name: "file_descriptors", Status: StatusWarn, Message: "not checked on this platform"}
}
