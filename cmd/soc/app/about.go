package app

func (m Model) viewAbout() string {
	return m.aboutDoc
}
