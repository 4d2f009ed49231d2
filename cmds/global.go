package cmds

var GlobalExecutor = NewExecutor()

func Define(name string, command *Command) {
	GlobalExecutor.Define(name, command)
}

func Execute(args []string) error {
	return GlobalExecutor.Execute(args)
}

func MustExecute(args []string) {
	GlobalExecutor.MustExecute(args)
}
