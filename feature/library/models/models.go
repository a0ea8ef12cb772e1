package models

import "time"

// Copy status values.
const (
	CopyAvailable  = "available"
	CopyCheckedOut = "checked_out"
	CopyReturned   = "returned"
)

// Loan status values.
const (
	LoanActive   = "active"
	LoanReturned = "returned"
	LoanOverdue  = "overdue"
	LoanLost     = "lost"
)

// Return transaction status values.
const (
	ReturnPending   = "pending"
	ReturnCompleted = "completed"
)

// Library is a physical library branch.
type Library struct {
	ID        int       `gorm:"primaryKey;column:library_id" json:"id"`
	Name      string    `gorm:"column:library_name;type:varchar(255);not null" json:"name"`
	Location  string    `gorm:"column:location;type:varchar(255);not null" json:"location"`
	Status    string    `gorm:"column:status;type:varchar(50);not null;default:active" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at" json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"-"`
}

func (Library) TableName() string {
	return "library"
}

// ReturnBox is a physical return box unit. Its ID doubles as the device id
// embedded in MQTT topics (ReturnBox01/... for ID 1).
type ReturnBox struct {
	ID        int       `gorm:"primaryKey;column:return_box_id" json:"id"`
	Name      string    `gorm:"column:return_box_name;type:varchar(255);not null" json:"name"`
	Location  string    `gorm:"column:location;type:varchar(255);not null" json:"location"`
	LibraryID *int      `gorm:"column:library_id;index" json:"libraryId"`
	Status    string    `gorm:"column:status;type:varchar(50);not null;default:active" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at" json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"-"`

	Library *Library `gorm:"foreignKey:LibraryID" json:"library,omitempty"`
}

func (ReturnBox) TableName() string {
	return "return_box"
}

// Book is a bibliographic record; physical items are BookCopy rows.
type Book struct {
	ID              int       `gorm:"primaryKey;column:book_id" json:"id"`
	ISBN            *string   `gorm:"column:isbn;type:varchar(20);uniqueIndex" json:"isbn"`
	Title           string    `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Author          string    `gorm:"column:author;type:varchar(255);not null" json:"author"`
	Publisher       *string   `gorm:"column:publisher;type:varchar(255)" json:"publisher"`
	PublicationYear *int      `gorm:"column:publication_year" json:"publicationYear"`
	Category        *string   `gorm:"column:category;type:varchar(100)" json:"category"`
	Description     *string   `gorm:"column:description;type:text" json:"description"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"-"`
	UpdatedAt       time.Time `gorm:"column:updated_at" json:"-"`

	Copies []BookCopy `gorm:"foreignKey:BookID" json:"copies,omitempty"`
}

func (Book) TableName() string {
	return "book"
}

// BookCopy is a physical copy carrying the RFID tag (EPC) the return boxes
// report.
type BookCopy struct {
	ID         int       `gorm:"primaryKey;column:copy_id" json:"id"`
	BookID     int       `gorm:"column:book_id;not null;index" json:"bookId"`
	CopyNumber int       `gorm:"column:copy_number;not null" json:"copyNumber"`
	EPC        string    `gorm:"column:book_epc;type:varchar(100);uniqueIndex;not null" json:"epc"`
	Status     string    `gorm:"column:status;type:varchar(50);not null;default:available;index" json:"status"`
	Condition  string    `gorm:"column:condition;type:varchar(50);not null;default:good" json:"condition"`
	LibraryID  *int      `gorm:"column:library_id" json:"libraryId"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"-"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"-"`

	Book *Book `gorm:"foreignKey:BookID" json:"book,omitempty"`
}

func (BookCopy) TableName() string {
	return "book_copy"
}

// Loan tracks a checked-out copy. UserID identifies the borrower in the
// campus identity system; patron records themselves live outside this service.
type Loan struct {
	ID           int        `gorm:"primaryKey;column:loan_id" json:"id"`
	UserID       int        `gorm:"column:user_id;not null;index" json:"userId"`
	CopyID       int        `gorm:"column:copy_id;not null;index" json:"copyId"`
	CheckoutDate time.Time  `gorm:"column:checkout_date;not null" json:"checkoutDate"`
	DueDate      time.Time  `gorm:"column:due_date;not null;index" json:"dueDate"`
	ReturnDate   *time.Time `gorm:"column:return_date" json:"returnDate"`
	Status       string     `gorm:"column:status;type:varchar(50);not null;default:active;index" json:"status"`
	FineAmount   float64    `gorm:"column:fine_amount;type:decimal(10,2);not null;default:0" json:"fineAmount"`
	FinePaid     bool       `gorm:"column:fine_paid;not null;default:false" json:"finePaid"`
	Notes        *string    `gorm:"column:notes;type:text" json:"notes"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"-"`
	UpdatedAt    time.Time  `gorm:"column:updated_at" json:"-"`

	Copy *BookCopy `gorm:"foreignKey:CopyID" json:"copy,omitempty"`
}

func (Loan) TableName() string {
	return "loan"
}

// ReturnTransaction is the durable record of one finalized return box
// session. UserID is nil for walk-in drop-offs with no identified borrower.
type ReturnTransaction struct {
	ID          int        `gorm:"primaryKey;column:return_id" json:"id"`
	UserID      *int       `gorm:"column:user_id;index" json:"userId"`
	ReturnBoxID *int       `gorm:"column:return_box_id;index" json:"returnBoxId"`
	ReturnDate  time.Time  `gorm:"column:return_date;not null" json:"returnDate"`
	Status      string     `gorm:"column:status;type:varchar(50);not null;default:pending;index" json:"status"`
	ProcessedBy *int       `gorm:"column:processed_by" json:"processedBy"`
	ProcessedAt *time.Time `gorm:"column:processed_at" json:"processedAt"`
	TotalFines  float64    `gorm:"column:total_fines;type:decimal(10,2);not null;default:0" json:"totalFines"`
	Notes       *string    `gorm:"column:notes;type:text" json:"notes"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"-"`
	UpdatedAt   time.Time  `gorm:"column:updated_at" json:"-"`

	Items []ReturnItem `gorm:"foreignKey:ReturnID" json:"items,omitempty"`
}

func (ReturnTransaction) TableName() string {
	return "return_transaction"
}

// ReturnItem links one returned copy (and its closed loan, if any) to a
// return transaction.
type ReturnItem struct {
	ID                int       `gorm:"primaryKey;column:return_item_id" json:"id"`
	ReturnID          int       `gorm:"column:return_id;not null;index" json:"returnId"`
	CopyID            int       `gorm:"column:copy_id;not null;index" json:"copyId"`
	LoanID            *int      `gorm:"column:loan_id;index" json:"loanId"`
	ConditionOnReturn string    `gorm:"column:condition_on_return;type:varchar(50);not null;default:good" json:"conditionOnReturn"`
	FineAmount        float64   `gorm:"column:fine_amount;type:decimal(10,2);not null;default:0" json:"fineAmount"`
	CreatedAt         time.Time `gorm:"column:created_at" json:"-"`

	Copy *BookCopy `gorm:"foreignKey:CopyID" json:"copy,omitempty"`
}

func (ReturnItem) TableName() string {
	return "return_item"
}

// All returns every entity for schema migration at startup.
func All() []any {
	return []any{
		&Library{},
		&ReturnBox{},
		&Book{},
		&BookCopy{},
		&Loan{},
		&ReturnTransaction{},
		&ReturnItem{},
	}
}
