// Package gitpath contains consts and methods to work with path inside
// the .git directory
package gitpath

// .git/ Files and directories
const (
	DotGitPath    = ".git"
	ConfigPath    = "config"
	HEADPath      = "HEAD"
	ObjectsPath   = "objects"
	RefsPath      = "refs"
	RefsTagsPath  = RefsPath + "/tags"
	RefsHeadsPath = RefsPath + "/heads"
)

// DefaultBranch is the branch HEAD points to in a new repository
const DefaultBranch = "main"

// LocalBranch returns the UNIX path of a local branch
// ex. for `main` returns `refs/heads/main`
func LocalBranch(name string) string {
	return RefsHeadsPath + "/" + name
}
