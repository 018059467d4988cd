package services

import (
	"errors"
	"testing"

	"github.com/Xusanbek0039/lms-platform/internal/models"
)

func newBlogService(env *testEnv) BlogService {
	return NewBlogService(env.db, env.blogRepo, env.userRepo, env.coinRepo, env.ledger)
}

func TestCreatePostRequiresTeacher(t *testing.T) {
	env := newTestEnv(t)
	svc := newBlogService(env)
	student := env.createUser(t, models.RoleStudent)
	teacher := env.createUser(t, models.RoleTeacher)

	post := &models.Post{Title: "Заметка", Content: "Текст"}
	if err := svc.CreatePost(post, student.ID); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("student CreatePost() error = %v, want ErrAccessDenied", err)
	}
	if err := svc.CreatePost(post, teacher.ID); err != nil {
		t.Fatalf("teacher CreatePost() error = %v", err)
	}
	if post.AuthorID != teacher.ID {
		t.Errorf("author = %s, want %s", post.AuthorID, teacher.ID)
	}

	if err := svc.CreatePost(&models.Post{}, teacher.ID); !errors.Is(err, ErrValidation) {
		t.Errorf("empty title error = %v, want ErrValidation", err)
	}
}

func TestPostLikeReclaimedOnUnlike(t *testing.T) {
	env := newTestEnv(t)
	svc := newBlogService(env)
	teacher := env.createUser(t, models.RoleTeacher)
	student := env.createUser(t, models.RoleStudent)

	post := &models.Post{Title: "Пост", Content: "Текст"}
	if err := svc.CreatePost(post, teacher.ID); err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}

	liked, err := svc.TogglePostLike(student.ID, post.ID)
	if err != nil {
		t.Fatalf("TogglePostLike() error = %v", err)
	}
	if !liked || env.userCoins(t, student.ID) != CoinsPerPostLike {
		t.Errorf("after like: liked=%v coins=%d, want true/%d", liked, env.userCoins(t, student.ID), CoinsPerPostLike)
	}

	// снятие лайка возвращает коин
	liked, err = svc.TogglePostLike(student.ID, post.ID)
	if err != nil {
		t.Fatalf("unlike error = %v", err)
	}
	if liked || env.userCoins(t, student.ID) != 0 {
		t.Errorf("after unlike: liked=%v coins=%d, want false/0", liked, env.userCoins(t, student.ID))
	}

	// повторный лайк начисляет снова
	if _, err := svc.TogglePostLike(student.ID, post.ID); err != nil {
		t.Fatalf("re-like error = %v", err)
	}
	if got := env.userCoins(t, student.ID); got != CoinsPerPostLike {
		t.Errorf("after re-like coins = %d, want %d", got, CoinsPerPostLike)
	}

	ok, err := env.ledger.VerifyBalance(student.ID)
	if err != nil {
		t.Fatalf("VerifyBalance() error = %v", err)
	}
	if !ok {
		t.Error("journal should match balance after like cycle")
	}
}

func TestUnlikeToleratesSpentCoin(t *testing.T) {
	env := newTestEnv(t)
	svc := newBlogService(env)
	teacher := env.createUser(t, models.RoleTeacher)
	student := env.createUser(t, models.RoleStudent)

	post := &models.Post{Title: "Пост", Content: "Текст"}
	if err := svc.CreatePost(post, teacher.ID); err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}
	if _, err := svc.TogglePostLike(student.ID, post.ID); err != nil {
		t.Fatalf("like error = %v", err)
	}
	// коин уже потрачен
	if err := env.ledger.RemoveCoins(student.ID, CoinsPerPostLike, "Потрачено"); err != nil {
		t.Fatalf("spend coin: %v", err)
	}

	liked, err := svc.TogglePostLike(student.ID, post.ID)
	if err != nil {
		t.Fatalf("unlike with empty balance error = %v", err)
	}
	if liked {
		t.Error("unlike should succeed even with spent coin")
	}
	if got := env.userCoins(t, student.ID); got != 0 {
		t.Errorf("balance = %d, want 0", got)
	}
}

func TestCommentLikeRewardsAuthor(t *testing.T) {
	env := newTestEnv(t)
	svc := newBlogService(env)
	teacher := env.createUser(t, models.RoleTeacher)
	author := env.createUser(t, models.RoleStudent)
	liker := env.createUser(t, models.RoleStudent)

	post := &models.Post{Title: "Пост", Content: "Текст"}
	if err := svc.CreatePost(post, teacher.ID); err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}
	comment, err := svc.AddComment(author.ID, post.ID, "Интересно!")
	if err != nil {
		t.Fatalf("AddComment() error = %v", err)
	}
	authorCoins := env.userCoins(t, author.ID)

	// коин достается автору комментария, не лайкнувшему
	if _, err := svc.ToggleCommentLike(liker.ID, comment.ID); err != nil {
		t.Fatalf("ToggleCommentLike() error = %v", err)
	}
	if got := env.userCoins(t, author.ID); got != authorCoins+CoinsPerCommentLike {
		t.Errorf("author coins = %d, want %d", got, authorCoins+CoinsPerCommentLike)
	}
	if got := env.userCoins(t, liker.ID); got != 0 {
		t.Errorf("liker coins = %d, want 0", got)
	}

	// снятие лайка комментария коин автора не забирает
	if _, err := svc.ToggleCommentLike(liker.ID, comment.ID); err != nil {
		t.Fatalf("unlike error = %v", err)
	}
	if got := env.userCoins(t, author.ID); got != authorCoins+CoinsPerCommentLike {
		t.Errorf("author coins after unlike = %d, want unchanged", got)
	}
}

func TestSelfCommentLikeAwardsNothing(t *testing.T) {
	env := newTestEnv(t)
	svc := newBlogService(env)
	teacher := env.createUser(t, models.RoleTeacher)
	author := env.createUser(t, models.RoleStudent)

	post := &models.Post{Title: "Пост", Content: "Текст"}
	if err := svc.CreatePost(post, teacher.ID); err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}
	comment, err := svc.AddComment(author.ID, post.ID, "Мой комментарий")
	if err != nil {
		t.Fatalf("AddComment() error = %v", err)
	}
	coinsBefore := env.userCoins(t, author.ID)

	liked, err := svc.ToggleCommentLike(author.ID, comment.ID)
	if err != nil {
		t.Fatalf("ToggleCommentLike() error = %v", err)
	}
	if !liked {
		t.Error("self-like should still be recorded")
	}
	if got := env.userCoins(t, author.ID); got != coinsBefore {
		t.Errorf("coins = %d, want unchanged %d", got, coinsBefore)
	}
}
