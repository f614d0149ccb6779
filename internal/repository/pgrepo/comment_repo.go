package pgrepo

import (
	"context"

	"github.com/fsdevblog/groph-crm/internal/domain"
	"github.com/fsdevblog/groph-crm/internal/repository/repoargs"
	"github.com/fsdevblog/groph-crm/pkg/uow"
	"github.com/jackc/pgx/v5"
)

type CommentRepository struct {
	db uow.DBTX
}

func NewCommentRepository(db uow.DBTX) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, args repoargs.CreateComment) (*domain.Comment, error) {
	const query = `INSERT INTO comments (content, author_id)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`

	comment := domain.Comment{
		AuthorID: args.AuthorID,
		Content:  args.Content,
	}
	err := r.db.QueryRow(ctx, query, args.Content, args.AuthorID).
		Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		return nil, convertErr(err, "creating comment by user %d", args.AuthorID)
	}
	return &comment, nil
}

// GetAll возвращает комментарии с именем и почтой автора, новые - первыми.
func (r *CommentRepository) GetAll(ctx context.Context) ([]domain.Comment, error) {
	const query = `SELECT c.id, c.created_at, c.updated_at, c.author_id, c.content, u.name, u.email
		FROM comments c
		JOIN users u ON c.author_id = u.id
		ORDER BY c.created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, convertErr(err, "getting comments")
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var comment domain.Comment
		scanErr := rows.Scan(
			&comment.ID,
			&comment.CreatedAt,
			&comment.UpdatedAt,
			&comment.AuthorID,
			&comment.Content,
			&comment.AuthorName,
			&comment.AuthorEmail,
		)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning comment")
		}
		comments = append(comments, comment)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "getting comments")
	}
	return comments, nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id int64) (*domain.Comment, error) {
	const query = `SELECT c.id, c.created_at, c.updated_at, c.author_id, c.content, u.name, u.email
		FROM comments c
		JOIN users u ON c.author_id = u.id
		WHERE c.id = $1`

	var comment domain.Comment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&comment.ID,
		&comment.CreatedAt,
		&comment.UpdatedAt,
		&comment.AuthorID,
		&comment.Content,
		&comment.AuthorName,
		&comment.AuthorEmail,
	)
	if err != nil {
		return nil, convertErr(err, "finding comment by id %d", id)
	}
	return &comment, nil
}

func (r *CommentRepository) Update(ctx context.Context, id int64, content string) (*domain.Comment, error) {
	const query = `UPDATE comments
		SET content = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
		RETURNING id, created_at, updated_at, author_id, content`

	var comment domain.Comment
	err := r.db.QueryRow(ctx, query, content, id).Scan(
		&comment.ID,
		&comment.CreatedAt,
		&comment.UpdatedAt,
		&comment.AuthorID,
		&comment.Content,
	)
	if err != nil {
		return nil, convertErr(err, "updating comment with id %d", id)
	}
	return &comment, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM comments WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return convertErr(err, "deleting comment with id %d", id)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(pgx.ErrNoRows, "deleting comment with id %d", id)
	}
	return nil
}
