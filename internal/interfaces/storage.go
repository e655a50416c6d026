package interfaces

// StorageManager - composite interface for all storage operations
type StorageManager interface {
	JobStorage() JobStorage
	CredentialsStorage() CredentialsStorage
	ProfileStorage() ProfileStorage
	DB() interface{}
	Close() error
}
