package ui

type tableController interface {
	NextColumn()
	PrevColumn()
	HideActiveColumn() bool
	ShowAllColumns()
	TableMeta() string
	Prefs() TablePrefs
}

type tableCursor interface {
	MoveUp()
	MoveDown()
	JumpToTop()
	JumpToBottom()
	HalfPageDown(pageSize int)
	HalfPageUp(pageSize int)
}
