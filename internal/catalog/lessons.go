package catalog

import (
	"fmt"
	"strings"

	"github.com/magabrotheeeer/edu-platform/internal/models"
)

// Сложность уроков резервного каталога.
const (
	Easy   models.Difficulty = "Facile"
	Medium models.Difficulty = "Moyen"
	Hard   models.Difficulty = "Difficile"
)

// FallbackLessonsPerSubject — сколько уроков генерируется для предмета без видео.
const FallbackLessonsPerSubject = 10

const introContent = `Ceci est une leçon d'introduction gratuite.

Cette leçon vous donne un aperçu du contenu disponible. Pour accéder à l'ensemble du programme avec des exercices interactifs, des évaluations et un suivi personnalisé, souscrivez à notre offre Premium.`

type lessonSeed struct {
	title       string
	description string
	duration    int
	difficulty  models.Difficulty
}

var mathSeeds = []lessonSeed{
	{"Introduction aux fonctions", "Découvrez les concepts fondamentaux des fonctions mathématiques", 25, Easy},
	{"Étude des fonctions linéaires", "Analyse complète des fonctions de type f(x) = ax + b", 35, Medium},
	{"Fonctions polynomiales du second degré", "Paraboles, discriminant et résolution d'équations", 45, Medium},
	{"Dérivées et applications", "Calcul de dérivées et étude de variations", 50, Hard},
	{"Limites de fonctions", "Concept de limite et calculs pratiques", 40, Hard},
	{"Géométrie dans l'espace", "Vecteurs, plans et droites dans l'espace", 55, Medium},
	{"Probabilités et statistiques", "Introduction aux probabilités et analyse statistique", 30, Easy},
	{"Suites numériques", "Suites arithmétiques et géométriques", 42, Medium},
	{"Trigonométrie avancée", "Fonctions trigonométriques et équations", 48, Hard},
	{"Intégrales et primitives", "Calcul intégral et applications géométriques", 60, Hard},
}

var physicsSeeds = []lessonSeed{
	{"Les forces et le mouvement", "Introduction à la mécanique classique", 30, Easy},
	{"Électricité et circuits", "Lois d'Ohm, résistances et circuits électriques", 40, Medium},
	{"Ondes et vibrations", "Propagation des ondes mécaniques et sonores", 45, Medium},
	{"Thermodynamique", "Chaleur, température et transformations", 50, Hard},
	{"Chimie organique", "Hydrocarbures et fonctions organiques", 55, Hard},
	{"Réactions chimiques", "Équilibres et cinétique chimique", 35, Medium},
	{"Optique géométrique", "Lentilles, miroirs et formation d'images", 38, Medium},
	{"Magnétisme et électromagnétisme", "Champs magnétiques et induction", 52, Hard},
	{"Physique nucléaire", "Radioactivité et réactions nucléaires", 45, Hard},
	{"Mécanique des fluides", "Pression, poussée d'Archimède et écoulements", 42, Medium},
}

// Короткие названия предметов, из которых строятся ID сгенерированных уроков.
var generatedSubjects = map[string]string{
	"3": "SVT",
	"4": "Français",
	"5": "Arabe",
	"6": "Anglais",
	"7": "Histoire-Géo",
	"8": "Éducation Islamique",
	"9": "Philosophie",
}

var (
	fallbackBySubject = buildFallback()
	fallbackByID      = indexFallback(fallbackBySubject)
)

func buildFallback() map[string][]models.Lesson {
	out := map[string][]models.Lesson{
		"1": fromSeeds("1", "math-1-", mathSeeds),
		"2": fromSeeds("2", "phys-2-", physicsSeeds),
	}
	difficulties := []models.Difficulty{Easy, Medium, Hard}
	for id, name := range generatedSubjects {
		lessons := make([]models.Lesson, FallbackLessonsPerSubject)
		for i := range lessons {
			n := i + 1
			lessons[i] = models.Lesson{
				ID:          fmt.Sprintf("%s-%s-%d", strings.ToLower(name), id, n),
				Title:       fmt.Sprintf("Leçon %d - %s", n, name),
				Description: fmt.Sprintf("Contenu détaillé pour la leçon %d de %s", n, name),
				SubjectID:   id,
				Duration:    fmt.Sprintf("%d min", 25+(i*7)%35),
				Difficulty:  difficulties[i%len(difficulties)],
				IsPremium:   i > 0,
			}
			if i == 0 {
				lessons[i].Content = introContent
			}
		}
		out[id] = lessons
	}
	return out
}

func fromSeeds(subjectID, prefix string, seeds []lessonSeed) []models.Lesson {
	lessons := make([]models.Lesson, len(seeds))
	for i, s := range seeds {
		lessons[i] = models.Lesson{
			ID:          fmt.Sprintf("%s%d", prefix, i+1),
			Title:       s.title,
			Description: s.description,
			SubjectID:   subjectID,
			Duration:    fmt.Sprintf("%d min", s.duration),
			Difficulty:  s.difficulty,
			IsPremium:   i > 0,
		}
		if i == 0 {
			lessons[i].Content = introContent
		}
	}
	return lessons
}

func indexFallback(bySubject map[string][]models.Lesson) map[string]models.Lesson {
	idx := make(map[string]models.Lesson)
	for _, lessons := range bySubject {
		for _, l := range lessons {
			idx[l.ID] = l
		}
	}
	return idx
}

func fallbackLessons(subjectID string) []models.Lesson {
	lessons := fallbackBySubject[subjectID]
	out := make([]models.Lesson, len(lessons))
	copy(out, lessons)
	return out
}

func fallbackLesson(lessonID string) (models.Lesson, bool) {
	l, ok := fallbackByID[lessonID]
	return l, ok
}

// LessonFromVideo строит урок из записи видео.
func LessonFromVideo(v models.Video) models.Lesson {
	l := models.Lesson{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		SubjectID:   v.SubjectID,
		Duration:    v.Duration,
		Difficulty:  v.Difficulty,
		IsPremium:   v.IsPremium,
		SourceURL:   v.SourceURL,
	}
	if !v.IsPremium {
		l.Content = introContent
	}
	return l
}
