package launch

// reset clears the process singleton between tests. The production API has
// no teardown on purpose; the environment lives until process exit.
func reset() {
	lifecycle.Store(stateUninitialized)
	instance.Store(nil)
}
