package repoargs

type CreateComment struct {
	AuthorID int64
	Content  string
}
