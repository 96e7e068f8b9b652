package git

// Compile-time check that MockRepository implements Repository.
var _ Repository = (*MockRepository)(nil)

// MockRepository is a configurable mock implementation of Repository for testing.
// Each method is backed by a function field. If the function field is nil,
// the method returns sensible zero values.
type MockRepository struct {
	PathFunc                       func() string
	WorkingDirectoryFunc           func() string
	IsHeadDetachedFunc             func() bool
	HeadFunc                       func() (Branch, error)
	RemotesFunc                    func() ([]Remote, error)
	RemoteURLFunc                  func(string) (string, error)
	NumberOfUncommittedChangesFunc func() (int, error)
}

func (m *MockRepository) Path() string {
	if m.PathFunc != nil {
		return m.PathFunc()
	}
	return ""
}

func (m *MockRepository) WorkingDirectory() string {
	if m.WorkingDirectoryFunc != nil {
		return m.WorkingDirectoryFunc()
	}
	return ""
}

func (m *MockRepository) IsHeadDetached() bool {
	if m.IsHeadDetachedFunc != nil {
		return m.IsHeadDetachedFunc()
	}
	return false
}

func (m *MockRepository) Head() (Branch, error) {
	if m.HeadFunc != nil {
		return m.HeadFunc()
	}
	return Branch{}, nil
}

func (m *MockRepository) Remotes() ([]Remote, error) {
	if m.RemotesFunc != nil {
		return m.RemotesFunc()
	}
	return nil, nil
}

func (m *MockRepository) RemoteURL(name string) (string, error) {
	if m.RemoteURLFunc != nil {
		return m.RemoteURLFunc(name)
	}
	return "", ErrRemoteNotFound
}

func (m *MockRepository) NumberOfUncommittedChanges() (int, error) {
	if m.NumberOfUncommittedChangesFunc != nil {
		return m.NumberOfUncommittedChangesFunc()
	}
	return 0, nil
}
