package config

// FoundryConfig holds the parts of foundry.toml smithy reads
type FoundryConfig struct {
	Profile      map[string]ProfileConfig `toml:"profile"`
	RpcEndpoints map[string]string        `toml:"rpc_endpoints"`
}

// ProfileConfig represents a profile's foundry configuration
type ProfileConfig struct {
	SrcPath string `toml:"src,omitempty"`
	OutPath string `toml:"out,omitempty"`
}

// OutDir returns the artifact directory of the default profile
func (c *FoundryConfig) OutDir() string {
	if c != nil {
		if profile, ok := c.Profile["default"]; ok && profile.OutPath != "" {
			return profile.OutPath
		}
	}
	return "out"
}
