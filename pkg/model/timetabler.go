package model

type Timetabler interface {
	Build(
		modelInput ModelInput,
	) (result Result, err error)

	Verify(
		result Result,
		modelInput ModelInput,
	) bool
}
