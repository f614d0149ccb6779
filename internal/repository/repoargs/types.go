package repoargs

type RepositoryName string

const (
	UserRepoName    RepositoryName = "user"
	RoleRepoName    RepositoryName = "role"
	ClientRepoName  RepositoryName = "client"
	ProductRepoName RepositoryName = "product"
	CommentRepoName RepositoryName = "comment"
	OrderRepoName   RepositoryName = "order"
)

// BatchExecQueryRow вызывается для каждого элемента батч-запроса с его индексом и ошибкой выполнения.
type BatchExecQueryRow func(i int, err error)
