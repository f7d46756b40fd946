package consts

// Set at link time with -ldflags "-X bitbucket.org/kleinnic74/geodist/consts.GitRepo=..."
var (
	GitRepo = "dev"
	Version = "0.1"
)

func UserAgent() string {
	return "geodist/" + Version + " (" + GitRepo + ")"
}
