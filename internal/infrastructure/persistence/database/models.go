package database

// StoredFileModel é o model GORM para metadados de arquivos
type StoredFileModel struct {
	ID          string `gorm:"type:varchar(36);primaryKey"`
	Kind        string `gorm:"type:varchar(32);not null;index"`
	FileName    string `gorm:"type:varchar(255)"`
	ContentType string `gorm:"type:varchar(255)"`
	Extension   string `gorm:"type:varchar(16)"`
	Size        int64  `gorm:"not null"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli"`
	UpdatedAt   int64  `gorm:"autoUpdateTime:milli"`
}

func (StoredFileModel) TableName() string {
	return "stored_files"
}

// UserModel é o model GORM para usuários
type UserModel struct {
	ID           int64            `gorm:"primaryKey;autoIncrement"`
	Username     string           `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string           `gorm:"type:varchar(255);not null"`
	Role         string           `gorm:"type:varchar(16);not null;index"`
	FirstName    string           `gorm:"type:varchar(100)"`
	LastName     string           `gorm:"type:varchar(100)"`
	Phone        string           `gorm:"type:varchar(32)"`
	AvatarID     *string          `gorm:"type:varchar(36);index"`
	Avatar       *StoredFileModel `gorm:"foreignKey:AvatarID;constraint:OnDelete:SET NULL"`
	CreatedAt    int64            `gorm:"autoCreateTime:milli;index"`
	UpdatedAt    int64            `gorm:"autoUpdateTime:milli"`
}

func (UserModel) TableName() string {
	return "users"
}

// AdvertModel é o model GORM para anúncios
type AdvertModel struct {
	ID          int64            `gorm:"primaryKey;autoIncrement"`
	Title       string           `gorm:"type:varchar(255);not null"`
	Description string           `gorm:"type:text"`
	Price       int64            `gorm:"not null"`
	AuthorID    int64            `gorm:"not null;index"`
	Author      *UserModel       `gorm:"foreignKey:AuthorID"`
	ImageID     *string          `gorm:"type:varchar(36);index"`
	Image       *StoredFileModel `gorm:"foreignKey:ImageID;constraint:OnDelete:SET NULL"`
	CreatedAt   int64            `gorm:"autoCreateTime:milli;index"`
	UpdatedAt   int64            `gorm:"autoUpdateTime:milli"`
}

func (AdvertModel) TableName() string {
	return "adverts"
}

// CommentModel é o model GORM para comentários
type CommentModel struct {
	ID        int64        `gorm:"primaryKey;autoIncrement"`
	Text      string       `gorm:"type:text;not null"`
	AdvertID  int64        `gorm:"not null;index"`
	Advert    *AdvertModel `gorm:"foreignKey:AdvertID;constraint:OnDelete:CASCADE"`
	AuthorID  int64        `gorm:"not null;index"`
	Author    *UserModel   `gorm:"foreignKey:AuthorID"`
	CreatedAt int64        `gorm:"autoCreateTime:milli;index"`
}

func (CommentModel) TableName() string {
	return "comments"
}

// AllModels lista os models na ordem de criação das tabelas
func AllModels() []any {
	return []any{
		&StoredFileModel{},
		&UserModel{},
		&AdvertModel{},
		&CommentModel{},
	}
}
