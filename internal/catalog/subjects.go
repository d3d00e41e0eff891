package catalog

import "github.com/magabrotheeeer/edu-platform/internal/models"

func subject(id, name, description, icon, color string, price float64) models.Subject {
	return models.Subject{ID: id, Name: name, Description: description, Icon: icon, Color: color, SubscriptionPrice: price}
}

// Предметы первого года.
var (
	math1    = subject("1", "Mathématiques", "Algèbre, Géométrie, Analyse", "Calculator", "bg-blue-500", 79)
	phys1    = subject("2", "Physique-Chimie", "Mécanique, Électricité, Chimie", "Atom", "bg-green-500", 69)
	svt1     = subject("3", "Sciences de la Vie et de la Terre", "Biologie, Géologie", "Leaf", "bg-emerald-500", 59)
	french1  = subject("4", "Français", "Littérature, Expression écrite", "BookOpen", "bg-purple-500", 49)
	arabic1  = subject("5", "Arabe", "اللغة العربية وآدابها", "Languages", "bg-red-500", 49)
	english1 = subject("6", "Anglais", "English Language & Literature", "Globe", "bg-indigo-500", 49)
	hg1      = subject("7", "Histoire-Géographie", "Histoire du Maroc, Géographie", "Map", "bg-orange-500", 39)
	islamic  = subject("8", "Éducation Islamique", "التربية الإسلامية", "Star", "bg-yellow-500", 39)
	philo1   = subject("9", "Philosophie", "Logique, Éthique, Métaphysique", "Brain", "bg-pink-500", 59)
)

// Предметы второго года.
var (
	math2    = subject("1", "Mathématiques", "Analyse, Algèbre, Géométrie avancées", "Calculator", "bg-blue-500", 89)
	phys2    = subject("2", "Physique-Chimie", "Mécanique quantique, Chimie organique", "Atom", "bg-green-500", 79)
	svt2     = subject("3", "Sciences de la Vie et de la Terre", "Génétique, Écologie, Géologie", "Leaf", "bg-emerald-500", 69)
	french2  = subject("4", "Français", "Analyse littéraire, Dissertation", "BookOpen", "bg-purple-500", 59)
	arabic2  = subject("5", "Arabe", "الأدب العربي والنقد", "Languages", "bg-red-500", 59)
	english2 = subject("6", "Anglais", "Advanced English Literature", "Globe", "bg-indigo-500", 59)
	hg2      = subject("7", "Histoire-Géographie", "Histoire contemporaine, Géopolitique", "Map", "bg-orange-500", 49)
	philo2   = subject("9", "Philosophie", "Logique, Éthique, Métaphysique", "Brain", "bg-pink-500", 69)
)

var subjectsByLevel = map[models.Level][]models.Subject{
	models.Level1BacMath: {math1, phys1, svt1, french1, arabic1, english1, hg1, islamic},
	models.Level1BacExp:  {math1, phys1, svt1, french1, arabic1, english1},
	models.Level1BacLit:  {french1, arabic1, english1, hg1, philo1, islamic},
	models.Level1BacHum:  {french1, arabic1, english1, hg1, philo1, islamic},
	models.Level2BacMath: {math2, phys2, svt2, french2, arabic2, english2},
	models.Level2BacPhys: {math2, phys2, french2, arabic2, english2},
	models.Level2BacSVT:  {math2, svt2, phys2, french2, arabic2, english2},
	models.Level2BacLit:  {french2, philo2, arabic2, english2, hg2, islamic},
}

// Subjects возвращает предметы уровня в порядке отображения.
func Subjects(level models.Level) ([]models.Subject, error) {
	subjects, ok := subjectsByLevel[level]
	if !ok {
		return nil, models.ErrInvalidLevel
	}
	out := make([]models.Subject, len(subjects))
	copy(out, subjects)
	return out, nil
}

// SubjectForLevel возвращает предмет уровня по ID. Цена зависит от уровня.
func SubjectForLevel(level models.Level, subjectID string) (models.Subject, error) {
	subjects, ok := subjectsByLevel[level]
	if !ok {
		return models.Subject{}, models.ErrInvalidLevel
	}
	for _, s := range subjects {
		if s.ID == subjectID {
			return s, nil
		}
	}
	return models.Subject{}, models.ErrSubjectNotFound
}
