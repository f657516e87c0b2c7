// Package models defines the core data structures for clients, taxonomies,
// users, uploaded files, company documents, and activity logs.
package models

import "time"

// Client represents a tenant company that users and files are scoped to.
type Client struct {
	// ID is the unique identifier for the client.
	ID string `json:"id" db:"id"`
	// FederalID is the client's federal tax identifier.
	FederalID string `json:"federalId" db:"federal_id"`
	// StateID is the client's state registration identifier.
	StateID string `json:"stateId" db:"state_id"`
	// CompanyName is the registered company name.
	CompanyName string `json:"companyName" db:"company_name"`
	// ClientName is the working name shown throughout the system.
	ClientName string `json:"clientName" db:"client_name"`
	// Address is the company mailing address.
	Address string `json:"address" db:"address"`
	// Email is the primary contact address.
	Email string `json:"email" db:"email"`
	// PhoneNumber is the primary contact phone number.
	PhoneNumber string `json:"phoneNumber" db:"phone_number"`
	// EmployeeCount is the declared number of employees.
	EmployeeCount int `json:"employeeCount" db:"employee_count"`
	// StartDate is when the engagement with the client began.
	StartDate time.Time `json:"startDate" db:"start_date"`
}

// UserType is a role label (e.g. "Admin") determining privilege level.
// IDs are small sequential integers assigned by the database.
type UserType struct {
	ID        int       `json:"id" db:"id"`
	UserType  string    `json:"userType" db:"user_type"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// FileType is a category label restricting which files a user may access.
// IDs follow the same sequential assignment as UserType.
type FileType struct {
	ID        int       `json:"id" db:"id"`
	FileType  string    `json:"fileType" db:"file_type"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// User is an application user scoped to one or more clients, with a single
// role and a set of file types it may work with. PasswordHash holds the
// bcrypt hash of the credential, never the plain secret.
type User struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	UserTypeID   int       `json:"userTypeId" db:"user_type_id"`
	ClientIDs    []string  `json:"clientIds" db:"-"`
	FileTypeIDs  []int     `json:"fileTypeIds" db:"-"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// ResolvedUser is a User with its references expanded one level deep.
// Dangling references resolve to nil entries.
type ResolvedUser struct {
	User
	UserType  *UserType   `json:"userType"`
	Clients   []*Client   `json:"clients"`
	FileTypes []*FileType `json:"fileTypes"`
}

// File is the metadata record for an uploaded file. FileName is the stored
// name under the uploads directory, not the original upload name.
type File struct {
	ID          string    `json:"id" db:"id"`
	FileName    string    `json:"fileName" db:"file_name"`
	ClientID    string    `json:"clientId" db:"client_id"`
	UserTypeID  int       `json:"userTypeId" db:"user_type_id"`
	FileTypeIDs []int     `json:"fileTypeIds" db:"-"`
	UploadDate  time.Time `json:"uploadDate" db:"upload_date"`
}

// ResolvedFile is a File with client, user type, and file types expanded.
type ResolvedFile struct {
	File
	Client    *Client     `json:"client"`
	UserType  *UserType   `json:"userType"`
	FileTypes []*FileType `json:"fileTypes"`
}

// CompanyDoc is the metadata record for an uploaded company document.
type CompanyDoc struct {
	ID         string    `json:"id" db:"id"`
	FileName   string    `json:"fileName" db:"file_name"`
	ClientID   string    `json:"clientId" db:"client_id"`
	UploadDate time.Time `json:"uploadDate" db:"upload_date"`
}

// ResolvedDoc is a CompanyDoc with its client reference expanded.
type ResolvedDoc struct {
	CompanyDoc
	Client *Client `json:"client"`
}

// Download is one downloaded-file entry inside a user's activity record.
type Download struct {
	ID           string    `json:"id" db:"id"`
	ClientName   string    `json:"clientName" db:"client_name"`
	FileName     string    `json:"fileName" db:"file_name"`
	DownloadTime time.Time `json:"downloadTime" db:"download_time"`
}

// Activity is the session log for one user: a single record per user name,
// holding every download made across that user's sessions.
type Activity struct {
	ID        string     `json:"id" db:"id"`
	UserName  string     `json:"userName" db:"user_name"`
	Downloads []Download `json:"downloadedFiles"`
}
