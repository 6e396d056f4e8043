package launch

import "strings"

// Command is one launcher invocation. It is handed to the spawner as an
// argument vector and never goes through a shell.
type Command struct {
  Path string
  Args []string
}

// BuildCommand returns `<launcherPath> <scheme>run/<appID>`. appID must
// already have passed ValidateAppID.
func BuildCommand(launcherPath string, scheme string, appID string) Command {
  return Command{
    Path: launcherPath,
    Args: []string{scheme + "run/" + appID},
  }
}

func (c Command) Argv() []string {
  return append([]string{c.Path}, c.Args...)
}

func (c Command) String() string {
  return strings.Join(c.Argv(), " ")
}
