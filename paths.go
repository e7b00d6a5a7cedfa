package narwhal

import "path/filepath"

// paths are the three well-known filenames composed under Config.LockDir.
// Client caches them and recomputes them whenever LockDir or the governing
// identity changes between calls (SetHostname/SetPid).
type paths struct {
	state    string
	lockfile string
	private  string
}

func composePaths(lockDir string, id identity) paths {
	return paths{
		state:    filepath.Join(lockDir, "state"),
		lockfile: filepath.Join(lockDir, "lockfile"),
		private:  filepath.Join(lockDir, id.host+"."+id.pid),
	}
}
